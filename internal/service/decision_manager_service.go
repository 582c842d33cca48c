package service

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"secure-acceptance-gateway/config"
	"secure-acceptance-gateway/internal/core/domain"
	"secure-acceptance-gateway/internal/core/ports"
	"secure-acceptance-gateway/pkg/apperror"
	"secure-acceptance-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dmNoteLayout renders note dates the way C's %c does in the POSIX locale.
const dmNoteLayout = "Mon Jan _2 15:04:05 2006"

var dmDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
}

// caseManagementStatus is the Decision Manager order status report.
// Element names match regardless of the report namespace.
type caseManagementStatus struct {
	XMLName xml.Name   `xml:"CaseManagementOrderStatus"`
	Updates []dmUpdate `xml:"Update"`
}

type dmUpdate struct {
	MerchantReferenceNumber string   `xml:"MerchantReferenceNumber,attr"`
	RequestID               string   `xml:"RequestID,attr"`
	OriginalDecision        string   `xml:"OriginalDecision"`
	NewDecision             *string  `xml:"NewDecision"`
	Reviewer                string   `xml:"Reviewer"`
	ReviewerComments        string   `xml:"ReviewerComments"`
	Notes                   []dmNote `xml:"Notes>Note"`
}

type dmNote struct {
	AddedBy string `xml:"AddedBy,attr"`
	Comment string `xml:"Comment,attr"`
	Date    string `xml:"Date,attr"`
}

// DecisionManagerServiceImpl implements ports.DecisionManagerService.
type DecisionManagerServiceImpl struct {
	orders     ports.OrderRepository
	txns       ports.TransactionRepository
	transactor ports.DBTransactor
	notifier   ports.DecisionNotifier
	audit      ports.AuditService
	cfg        *config.Holder
	log        zerolog.Logger
}

// NewDecisionManagerService creates a new DecisionManagerServiceImpl.
// notifier and audit may be nil.
func NewDecisionManagerService(
	orders ports.OrderRepository,
	txns ports.TransactionRepository,
	transactor ports.DBTransactor,
	notifier ports.DecisionNotifier,
	audit ports.AuditService,
	cfg *config.Holder,
	log zerolog.Logger,
) *DecisionManagerServiceImpl {
	return &DecisionManagerServiceImpl{
		orders:     orders,
		txns:       txns,
		transactor: transactor,
		notifier:   notifier,
		audit:      audit,
		cfg:        cfg,
		log:        log,
	}
}

// CheckKey validates the shared key sent with a notification. With no keys
// configured every request is accepted.
func (s *DecisionManagerServiceImpl) CheckKey(key string) error {
	keys := s.cfg.Current().Cybersource.DecisionManagerKeys
	if len(keys) == 0 {
		return nil
	}
	key = strings.TrimSpace(key)
	for _, k := range keys {
		if k == key {
			return nil
		}
	}
	s.log.Warn().Msg("decision manager key rejected")
	return apperror.ErrInvalidDecisionManagerKey()
}

// HandleNotification applies every Update of a case management report and
// returns how many were applied. Updates for unknown orders or transactions
// are skipped.
func (s *DecisionManagerServiceImpl) HandleNotification(ctx context.Context, content []byte) (int, error) {
	var report caseManagementStatus
	if err := xml.Unmarshal(content, &report); err != nil {
		return 0, apperror.Validation("malformed decision manager report")
	}

	applied := 0
	for i := range report.Updates {
		update, err := s.applyUpdate(ctx, &report.Updates[i])
		if err != nil {
			return applied, err
		}
		if update == nil {
			continue
		}
		applied++
		s.afterUpdate(ctx, update)
	}
	return applied, nil
}

func (s *DecisionManagerServiceImpl) applyUpdate(ctx context.Context, u *dmUpdate) (*domain.DecisionUpdate, error) {
	order, err := s.orders.GetByNumber(ctx, u.MerchantReferenceNumber)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		s.log.Warn().Str("order", u.MerchantReferenceNumber).Msg("decision manager update for unknown order")
		return nil, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.txns.GetByOrderAndReference(ctx, dbTx, order.ID, u.RequestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		s.log.Warn().Str("order", order.Number).Str("request_id", u.RequestID).Msg("decision manager update for unknown transaction")
		return nil, nil
	}

	for _, n := range u.Notes {
		prefix := fmt.Sprintf("[Decision Manager %s]", noteDate(n.Date))
		line := fmt.Sprintf("%s %s added comment: %s\n", prefix, n.AddedBy, n.Comment)
		if err := s.orders.AppendSystemNote(ctx, dbTx, order.ID, prefix, line); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save decision manager note: %w", err))
		}
	}

	out := &domain.DecisionUpdate{
		OrderNumber:   order.Number,
		TransactionID: txn.ID,
		Reference:     txn.Reference,
		Reviewer:      strings.TrimSpace(u.Reviewer),
		Comments:      strings.TrimSpace(u.ReviewerComments),
		NotesAdded:    len(u.Notes),
		OccurredAt:    time.Now().UTC(),
	}

	if u.NewDecision != nil {
		newDecision := domain.Decision(strings.TrimSpace(*u.NewDecision))
		out.OldDecision = txn.Status
		out.NewDecision = newDecision

		note := &domain.OrderNote{
			ID:       uuid.New(),
			OrderID:  order.ID,
			NoteType: domain.NoteTypeSystem,
			Message: fmt.Sprintf("[Decision Manager] %s changed decision from %s to %s.\n\nComments: %s",
				out.Reviewer, txn.Status, newDecision, out.Comments),
		}
		if err := s.orders.AddNote(ctx, dbTx, note); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("add decision note: %w", err))
		}

		// Review outcomes override the order pipeline.
		if newDecision != domain.DecisionAccept {
			if err := s.orders.UpdateStatus(ctx, dbTx, order.ID, domain.OrderStatusPaymentDeclined); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("update order status: %w", err))
			}
		}
		if err := s.txns.UpdateStatus(ctx, dbTx, txn.ID, newDecision); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("update transaction status: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("order", order.Number).
		Str("transaction_id", txn.Reference).
		Str("old_decision", string(out.OldDecision)).
		Str("new_decision", string(out.NewDecision)).
		Int("notes", out.NotesAdded).
		Msg("decision manager update applied")
	return out, nil
}

func (s *DecisionManagerServiceImpl) afterUpdate(ctx context.Context, update *domain.DecisionUpdate) {
	if update.NewDecision != "" {
		metrics.RecordDecisionUpdate(string(update.NewDecision))
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, update); err != nil {
			s.log.Error().Err(err).Str("order", update.OrderNumber).Msg("decision update notification failed")
		}
	}
	if s.audit != nil {
		details, _ := json.Marshal(update)
		s.audit.Log(ctx, &domain.AuditLog{
			Actor:        update.Reviewer,
			Action:       domain.AuditActionDecisionUpdate,
			ResourceType: "transaction",
			ResourceID:   update.TransactionID.String(),
			Details:      string(details),
		})
	}
}

// noteDate reformats a report date; unparseable dates are used as given.
func noteDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dmDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format(dmNoteLayout)
		}
	}
	return raw
}
