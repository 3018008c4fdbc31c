package app

import (
	"context"

	"github.com/alexanderramin/studyweek/internal/domain"
)

type ReflectUseCase interface {
	Reflect(ctx context.Context, req ReflectRequest) (*ReflectResponse, error)
}

type DashboardUseCase interface {
	Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type LogFocusSessionUseCase interface {
	LogFocusSession(ctx context.Context, s *domain.FocusSession) error
}

type LogManualProgressUseCase interface {
	LogManualProgress(ctx context.Context, e *domain.ManualEntry) error
}
