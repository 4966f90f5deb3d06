package health

import (
	"context"
	"errors"
	"testing"
)

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockModelChecker struct {
	err error
}

func (m *mockModelChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		modelErr   error
		wantStatus Status
		wantDB     CheckResult
		wantModel  CheckResult
	}{
		{"all healthy", nil, nil, Healthy, CheckOK, CheckOK},
		{"database down", errors.New("conn refused"), nil, Degraded, CheckError, CheckOK},
		{"model not loaded", nil, errors.New("artifact not loaded"), Degraded, CheckOK, CheckError},
		{"both down", errors.New("conn refused"), errors.New("artifact not loaded"), Degraded, CheckError, CheckError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockDBPinger{err: tt.dbErr}, &mockModelChecker{err: tt.modelErr})
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Checks["database"] != tt.wantDB {
				t.Errorf("database = %q, want %q", r.Checks["database"], tt.wantDB)
			}
			if r.Checks["model"] != tt.wantModel {
				t.Errorf("model = %q, want %q", r.Checks["model"], tt.wantModel)
			}
		})
	}
}

func TestCheck_NoModel(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("status = %q, want %q", r.Status, Healthy)
	}
	if _, ok := r.Checks["model"]; ok {
		t.Error("model check should be absent when no encoder is wired")
	}
}
