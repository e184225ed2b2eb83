package schemaupdater_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/searchsync/internal/model"
	"github.com/hitesh22rana/searchsync/internal/model/catalog"
	"github.com/hitesh22rana/searchsync/internal/pkg/searchschema"
	"github.com/hitesh22rana/searchsync/internal/service/schemaupdater"
	schemaupdatermock "github.com/hitesh22rana/searchsync/internal/service/schemaupdater/mock"
)

func newRegistry(t *testing.T, defs ...*model.Definition) *model.Registry {
	t.Helper()

	r := model.NewRegistry()
	require.NoError(t, r.Register(defs...))
	return r
}

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schemaupdatermock.NewMockRepository(ctrl)

	broken := &model.Definition{
		Name:   "Broken",
		Fields: []model.Field{model.NewField("payload", model.FieldType("binary"))},
	}
	registry := newRegistry(t, catalog.User, catalog.Role, catalog.TimeTable, catalog.Scholar, broken)

	type want struct {
		succeeded []string
		failed    []string
		report    string
		notices   string
		err       codes.Code
	}

	tests := []struct {
		name string
		req  *schemaupdater.RunRequest
		mock func()
		want want
	}{
		{
			name: "success: single model",
			req:  &schemaupdater.RunRequest{Filter: "user"},
			mock: func() {
				repo.EXPECT().ApplySchema(gomock.Any(), catalog.User, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *model.Definition, schema []byte) (string, error) {
						// User has three plain fields and an unindexed link.
						assert.Equal(t, 3, strings.Count(string(schema), "<field type="))
						return "user_100000000001", nil
					})
			},
			want: want{
				succeeded: []string{"User"},
				report:    "Schema and index definitions successfully applied for: User.",
				notices:   "Schema creation started for 1 model(s)\n+ User\n",
			},
		},
		{
			name: "success: names match case-insensitively and by bucket",
			req:  &schemaupdater.RunRequest{Filter: " USER ,time_table", Silent: true},
			mock: func() {
				repo.EXPECT().ApplySchema(gomock.Any(), catalog.User, gomock.Any()).Return("user_100000000001", nil)
				repo.EXPECT().ApplySchema(gomock.Any(), catalog.TimeTable, gomock.Any()).Return("time_table_100000000002", nil)
			},
			want: want{
				succeeded: []string{"User", "TimeTable"},
				report:    "Schema and index definitions successfully applied for: User, TimeTable.",
			},
		},
		{
			name: "success: all models with one failing classification",
			req:  &schemaupdater.RunRequest{Filter: "all", Silent: true},
			mock: func() {
				for _, def := range []*model.Definition{catalog.User, catalog.Role, catalog.TimeTable, catalog.Scholar} {
					repo.EXPECT().ApplySchema(gomock.Any(), def, gomock.Any()).Return(def.BucketName()+"_100000000001", nil)
				}
			},
			want: want{
				succeeded: []string{"User", "Role", "TimeTable", "Scholar"},
				failed:    []string{"Broken"},
				report:    "Failed:\n - Broken: ",
			},
		},
		{
			name: "error: every swap fails",
			req:  &schemaupdater.RunRequest{Filter: "user,role"},
			mock: func() {
				repo.EXPECT().ApplySchema(gomock.Any(), catalog.User, gomock.Any()).
					Return("", status.Error(codes.Internal, "failed to create search index"))
				repo.EXPECT().ApplySchema(gomock.Any(), catalog.Role, gomock.Any()).
					Return("", status.Error(codes.Aborted, "failed to bind bucket role"))
			},
			want: want{
				failed:  []string{"User", "Role"},
				report:  "Operation failed:\n - User: ",
				notices: "Schema creation started for 2 model(s)\n",
			},
		},
		{
			name: "success: nothing matched",
			req:  &schemaupdater.RunRequest{Filter: "invoice"},
			mock: func() {},
			want: want{
				report: `No models matched "invoice"; nothing was done.`,
			},
		},
		{
			name: "error: empty filter",
			req:  &schemaupdater.RunRequest{Filter: ""},
			mock: func() {},
			want: want{
				err: codes.InvalidArgument,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notices bytes.Buffer
			s := schemaupdater.New(
				validator.New(),
				&schemaupdater.Config{Notices: &notices},
				registry,
				searchschema.DefaultCompiler(),
				repo,
			)

			tt.mock()
			report, err := s.Run(t.Context(), tt.req)
			if tt.want.err != codes.OK {
				assert.Equal(t, tt.want.err, status.Code(err))
				assert.Nil(t, report)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want.succeeded, modelNames(report.Succeeded()))
			assert.Equal(t, tt.want.failed, modelNames(report.Failed()))
			assert.Contains(t, report.String(), tt.want.report)
			assert.NotEmpty(t, report.RunID)
			assert.Equal(t, tt.want.notices, notices.String())

			for _, res := range report.Succeeded() {
				assert.NotEmpty(t, res.Index)
			}
		})
	}
}

func TestRun_ClassificationFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schemaupdatermock.NewMockRepository(ctrl)
	broken := &model.Definition{
		Name:   "Broken",
		Fields: []model.Field{model.NewField("payload", model.FieldType("binary"))},
	}

	s := schemaupdater.New(validator.New(), &schemaupdater.Config{}, newRegistry(t, broken), searchschema.DefaultCompiler(), repo)

	report, err := s.Run(t.Context(), &schemaupdater.RunRequest{Filter: "all", Silent: true})
	require.NoError(t, err)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, codes.InvalidArgument, status.Code(failed[0].Err))
	assert.True(t, strings.HasPrefix(report.String(), "Operation failed:"))
	assert.NotContains(t, report.String(), "Operation took")
}

func TestRun_NoTasksForEmptySelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schemaupdatermock.NewMockRepository(ctrl)
	models := schemaupdatermock.NewMockModelRegistry(ctrl)
	models.EXPECT().BaseModels().Return(nil)

	var notices bytes.Buffer
	s := schemaupdater.New(validator.New(), &schemaupdater.Config{Notices: &notices}, models, searchschema.DefaultCompiler(), repo)

	report, err := s.Run(t.Context(), &schemaupdater.RunRequest{Filter: "all"})
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.Empty(t, notices.String())
	assert.Equal(t, `No models matched "all"; nothing was done.`, report.String())
}

func TestRun_SwapsRunConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schemaupdatermock.NewMockRepository(ctrl)
	defs := catalog.Definitions()

	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	repo.EXPECT().ApplySchema(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, def *model.Definition, _ []byte) (string, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			if int(n) == len(defs) {
				close(release)
			}
			select {
			case <-release:
			case <-time.After(5 * time.Second):
				return "", errors.New("swaps did not run concurrently")
			}
			inFlight.Add(-1)
			return def.BucketName() + "_100000000001", nil
		}).Times(len(defs))

	s := schemaupdater.New(validator.New(), &schemaupdater.Config{}, newRegistry(t, defs...), searchschema.DefaultCompiler(), repo)

	report, err := s.Run(t.Context(), &schemaupdater.RunRequest{Filter: "all", Silent: true})
	require.NoError(t, err)
	assert.Len(t, report.Succeeded(), len(defs))
	assert.Equal(t, int32(len(defs)), peak.Load())
}

func TestRun_ParallelismLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := schemaupdatermock.NewMockRepository(ctrl)
	defs := catalog.Definitions()

	var inFlight, peak atomic.Int32
	repo.EXPECT().ApplySchema(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, def *model.Definition, _ []byte) (string, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			return def.BucketName() + "_100000000001", nil
		}).Times(len(defs))

	s := schemaupdater.New(
		validator.New(),
		&schemaupdater.Config{ParallelismLimit: 2},
		newRegistry(t, defs...),
		searchschema.DefaultCompiler(),
		repo,
	)

	report, err := s.Run(t.Context(), &schemaupdater.RunRequest{Filter: "all", Silent: true})
	require.NoError(t, err)
	assert.Len(t, report.Succeeded(), len(defs))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestNew_KeepsCallerConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &schemaupdater.Config{ParallelismLimit: 3}
	s := schemaupdater.New(validator.New(), cfg, newRegistry(t), searchschema.DefaultCompiler(), schemaupdatermock.NewMockRepository(ctrl))

	require.NotNil(t, s)
	assert.Equal(t, &schemaupdater.Config{ParallelismLimit: 3}, cfg)
}

func modelNames(results []schemaupdater.Result) []string {
	var names []string
	for _, res := range results {
		names = append(names, res.Model)
	}
	return names
}
