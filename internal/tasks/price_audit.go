package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"sales-management-backend/db/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypePriceAuditLog identifies the batched price-audit task.
const TypePriceAuditLog = "audit:price_log"

// AuditQueue is the asynq queue audit tasks are routed to.
const AuditQueue = "audit"

type PriceAuditPayload struct {
	Entries []models.PriceAuditLog `json:"entries"`
}

// NewPriceAuditTask wraps one import's audit entries into a queue task.
func NewPriceAuditTask(entries []models.PriceAuditLog) (*asynq.Task, error) {
	payload, err := json.Marshal(PriceAuditPayload{Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("encoding price audit payload: %w", err)
	}
	return asynq.NewTask(TypePriceAuditLog, payload, asynq.MaxRetry(5), asynq.Queue(AuditQueue)), nil
}

// PriceAuditEnqueuer is the import pipeline's audit sink: it pushes the
// batch onto the task queue instead of writing to storage inline, so audit
// persistence never extends the import's critical path.
type PriceAuditEnqueuer struct {
	client *asynq.Client
}

func NewPriceAuditEnqueuer(client *asynq.Client) *PriceAuditEnqueuer {
	return &PriceAuditEnqueuer{client: client}
}

func (e *PriceAuditEnqueuer) LogPriceAuditBatch(entries []models.PriceAuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	task, err := NewPriceAuditTask(entries)
	if err != nil {
		return err
	}
	_, err = e.client.Enqueue(task)
	return err
}

// PriceAuditWriter is the slice of the audit repository the handler needs.
type PriceAuditWriter interface {
	CreateBatch(entries []models.PriceAuditLog) error
}

// PriceAuditHandler drains audit tasks into storage.
type PriceAuditHandler struct {
	repo   PriceAuditWriter
	logger *zap.Logger
}

func NewPriceAuditHandler(repo PriceAuditWriter, logger *zap.Logger) *PriceAuditHandler {
	return &PriceAuditHandler{repo: repo, logger: logger}
}

func (h *PriceAuditHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload PriceAuditPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload will never parse on retry.
		return fmt.Errorf("decoding price audit payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.repo.CreateBatch(payload.Entries); err != nil {
		return fmt.Errorf("writing price audit batch: %w", err)
	}
	h.logger.Info("Price audit batch written", zap.Int("entries", len(payload.Entries)))
	return nil
}
