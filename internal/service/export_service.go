package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"exportbridge/internal/domain"
	"exportbridge/internal/mapper"
	"exportbridge/internal/port"
)

// ExportServiceConfig holds settings for the export pipeline.
type ExportServiceConfig struct {
	ArchivePrefix string
}

// ExportService runs the fetch → map → forward pipeline for one annotation.
type ExportService interface {
	Export(ctx context.Context, input domain.ExportInput) (*domain.ExportResult, error)
}

type exportService struct {
	fetcher  *ExportFetcher
	sink     port.DocumentSink
	archive  port.ObjectStorage
	notifier port.FailureNotifier
	cfg      ExportServiceConfig
}

// NewExportService creates a new ExportService. archive and notifier may be nil
// when archival or failure notification is disabled.
func NewExportService(
	source port.ExportSource,
	sink port.DocumentSink,
	archive port.ObjectStorage,
	notifier port.FailureNotifier,
	cfg ExportServiceConfig,
) ExportService {
	return &exportService{
		fetcher:  NewExportFetcher(source),
		sink:     sink,
		archive:  archive,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (s *exportService) Export(ctx context.Context, input domain.ExportInput) (*domain.ExportResult, error) {
	if input.AnnotationID == "" || input.QueueID == "" {
		return nil, domain.ErrMissingParams
	}

	log := slog.With(
		"component", "exportService",
		"annotation_id", input.AnnotationID,
		"queue_id", input.QueueID,
		"request_id", input.RequestID,
	)
	stage := domain.StageAuthenticated

	raw, err := s.fetcher.Fetch(ctx, port.ExportRequest{
		QueueID:      input.QueueID,
		AnnotationID: input.AnnotationID,
		Format:       domain.ExportFormatXML,
	})
	if err != nil {
		return nil, s.fail(ctx, log, input, stage, err)
	}
	stage = domain.StageFetched
	log.Debug("export fetched", "bytes", len(raw))

	reg, err := mapper.Map(raw)
	if err != nil {
		return nil, s.fail(ctx, log, input, stage, err)
	}
	converted, err := mapper.Marshal(reg)
	if err != nil {
		return nil, s.fail(ctx, log, input, stage, err)
	}
	stage = domain.StageMapped
	payable := reg.Invoices.Payable
	log.Debug("export mapped", "invoice_number", payable.InvoiceNumber, "details", len(payable.Details.Detail))

	archiveKeys := s.archiveDocuments(ctx, log, input, raw, converted)

	status, err := s.sink.Deliver(ctx, port.DeliverInput{
		AnnotationID: input.AnnotationID,
		Content:      converted,
	})
	if err != nil {
		return nil, s.fail(ctx, log, input, stage, err)
	}
	stage = domain.StageForwarded
	log.Debug("export forwarded", "stage", stage, "sink_status", status)

	result := &domain.ExportResult{
		AnnotationID:  input.AnnotationID,
		QueueID:       input.QueueID,
		InvoiceNumber: payable.InvoiceNumber,
		Details:       len(payable.Details.Detail),
		SinkStatus:    status,
		ArchiveKeys:   archiveKeys,
	}
	stage = domain.StageDone
	log.Info("export completed", "stage", stage, "sink_status", status, "invoice_number", result.InvoiceNumber)
	return result, nil
}

// fail tags err with the stage reached, logs it, and notifies operators.
func (s *exportService) fail(ctx context.Context, log *slog.Logger, input domain.ExportInput, stage domain.Stage, err error) error {
	stageErr := &domain.StageError{Stage: stage, Err: err}
	log.Error("export failed", "stage", stage, "error", err)

	if s.notifier != nil {
		notifyErr := s.notifier.NotifyExportFailure(context.WithoutCancel(ctx), port.ExportFailure{
			AnnotationID: input.AnnotationID,
			QueueID:      input.QueueID,
			RequestID:    input.RequestID,
			Stage:        string(stage),
			Reason:       failureReason(err),
		})
		if notifyErr != nil {
			log.Warn("failure notification not sent", "error", notifyErr)
		}
	}
	return stageErr
}

// archiveDocuments stores the source export and the converted document side by
// side. Archival is best effort: errors are logged and no keys are returned.
func (s *exportService) archiveDocuments(ctx context.Context, log *slog.Logger, input domain.ExportInput, raw, converted []byte) []string {
	if s.archive == nil {
		return nil
	}

	base := path.Join(s.cfg.ArchivePrefix, input.QueueID, input.AnnotationID, uuid.NewString())
	docs := []struct {
		key  string
		body []byte
	}{
		{base + "-source.xml", raw},
		{base + "-converted.xml", converted},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, d := range docs {
		g.Go(func() error {
			_, err := s.archive.Upload(gctx, port.UploadInput{
				Key:         d.key,
				Body:        bytes.NewReader(d.body),
				ContentType: "application/xml",
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("archiving export failed", "error", err)
		return nil
	}

	keys := make([]string, 0, len(docs))
	for _, d := range docs {
		keys = append(keys, d.key)
	}
	return keys
}

// failureReason is the operator-facing summary of a pipeline error.
func failureReason(err error) string {
	var fwdErr *domain.ForwardingError
	switch {
	case errors.As(err, &fwdErr):
		return fmt.Sprintf("sink responded with status %d", fwdErr.StatusCode)
	case errors.Is(err, domain.ErrUpstreamAuth):
		return "upstream rejected credentials"
	default:
		return err.Error()
	}
}
