package update_status

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smilehub/clinic-booking/internal/domain"
	"github.com/smilehub/clinic-booking/internal/validation"
	"github.com/smilehub/clinic-booking/pkg/ptr"
)

const msgReasonRequired = "is required when cancelling an appointment"

// validateRequest проверяет запрос и возвращает целевой статус и причину отмены.
// Причина сохраняется только для cancelled
func validateRequest(v *validation.Validator, req *Request, policy Policy) (domain.Status, *string, error) {
	if err := v.Struct(req); err != nil {
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			return "", nil, fmt.Errorf("%w: validate request: %v", ErrInternal, err)
		}
		return "", nil, vErr
	}

	target, _ := domain.ParseStatus(req.Status)
	if target != domain.StatusCancelled {
		return target, nil, nil
	}

	reason := strings.TrimSpace(ptr.Deref(req.Reason))
	if reason == "" {
		if policy.RequireCancellationReason {
			return "", nil, validation.Field("reason", msgReasonRequired)
		}
		reason = policy.DefaultCancellationReason
	}

	return target, &reason, nil
}
