package service

import (
	"context"

	"mealdrop/internal/domain"
)

// NopAuditor is used when no audit queue is configured.
type NopAuditor struct{}

func (NopAuditor) PublishInvalid(context.Context, domain.AuditEvent) {}

func (NopAuditor) Dropped() int64 { return 0 }

var _ InvalidRequestAuditor = NopAuditor{}
