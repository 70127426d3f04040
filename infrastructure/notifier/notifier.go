// Package notifier envia o resumo de alertas executivos para um webhook
// externo (Slack, Teams ou qualquer coletor HTTP).
package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 10 * time.Second

// Digest é o corpo enviado ao webhook. Carrega apenas os alertas HIGH e
// MEDIUM; os contadores incluem também os LOW para referência.
type Digest struct {
	GeneratedAt time.Time               `json:"generated_at"`
	AsOf        domain.Period           `json:"as_of"`
	Counts      domain.AlertCounts      `json:"counts"`
	Alerts      []domain.ExecutiveAlert `json:"alerts"`
}

type AlertNotifier interface {
	SendDigest(ctx context.Context, report *domain.AlertReport) error
}

type WebhookNotifier struct {
	httpClient *http.Client
	cfg        config.Notifier
}

func NewNotifier(cfg config.Notifier) AlertNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		cfg: cfg,
	}
}

// SendDigest monta o resumo do relatório e o envia por POST ao webhook
// configurado.
func (n *WebhookNotifier) SendDigest(ctx context.Context, report *domain.AlertReport) error {
	digest := Digest{
		GeneratedAt: time.Now().UTC(),
		AsOf:        report.AsOf,
		Counts:      report.Counts,
		Alerts:      make([]domain.ExecutiveAlert, 0, len(report.Alerts)),
	}

	for _, alert := range report.Alerts {
		if alert.Severity == domain.SeverityLow {
			continue
		}
		digest.Alerts = append(digest.Alerts, alert)
	}

	body, err := json.Marshal(digest)
	if err != nil {
		return fmt.Errorf("erro ao serializar o digest: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if n.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.cfg.Token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook respondeu com status: %s", resp.Status)
	}

	return nil
}
