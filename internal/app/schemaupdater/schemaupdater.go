//go:generate mockgen -source=$GOFILE -package=$GOPACKAGE -destination=./mock/$GOFILE

package schemaupdater

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	loggerpkg "github.com/hitesh22rana/searchsync/internal/pkg/logger"
	schemaupdatersvc "github.com/hitesh22rana/searchsync/internal/service/schemaupdater"
)

// Service provides schema synchronization related operations.
type Service interface {
	Run(ctx context.Context, req *schemaupdatersvc.RunRequest) (*schemaupdatersvc.Report, error)
}

// SchemaUpdater represents the schema updater job.
type SchemaUpdater struct {
	logger *zap.Logger
	svc    Service
	out    io.Writer
}

// New creates a new schema updater job that prints its report to out.
func New(ctx context.Context, svc Service, out io.Writer) *SchemaUpdater {
	return &SchemaUpdater{
		logger: loggerpkg.FromContext(ctx),
		svc:    svc,
		out:    out,
	}
}

// Run synchronizes the models selected by filter and prints the report.
// An error is returned when the run could not start or any model failed.
func (su *SchemaUpdater) Run(ctx context.Context, filter string, silent bool) error {
	report, err := su.svc.Run(ctx, &schemaupdatersvc.RunRequest{
		Filter: filter,
		Silent: silent,
	})
	if err != nil {
		su.logger.Error("error occurred while running the schema updater job", zap.Error(err))
		return err
	}

	//nolint:errcheck // Report output is best effort
	fmt.Fprintln(su.out, report.String())

	if failed := report.Failed(); len(failed) > 0 {
		err = status.Errorf(codes.Aborted, "%d of %d model(s) failed", len(failed), len(report.Results))
		su.logger.Error("schema updater job finished with failures", zap.Error(err))
		return err
	}

	su.logger.Info("successfully exited the schema updater job")
	return nil
}
