package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestObserver_ReceivesMutationEvents(t *testing.T) {
	f := newFixture(t)
	rec := &recordingObserver{}
	svc := NewRosterService(f.roster, f.uow, rec)

	_, err := svc.Add(context.Background(), domain.RolePM, "Pat")
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), domain.RolePM, "Pat")
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "roster-add", rec.events[0].Name)
	assert.True(t, rec.events[0].Success)
	assert.False(t, rec.events[1].Success)
	assert.Error(t, rec.events[1].Err)
}

func TestLogUseCaseObserver_Levels(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelInfo)
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "report-roi", Success: true, Fields: map[string]any{"read_only": true}})
	assert.Empty(t, buf.String())

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "import-cases", Success: true, Fields: map[string]any{"imported": 3}})
	assert.Contains(t, buf.String(), "service_use_case")
	assert.Contains(t, buf.String(), "use_case=import-cases")
	assert.Contains(t, buf.String(), "imported=3")

	buf.Reset()
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "set-quote", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil, slog.LevelDebug))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
