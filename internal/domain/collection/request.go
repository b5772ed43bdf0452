package collection

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hotelstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var requestValidator = validator.New()

// CollectionRequest describes one request to collect (consume or write off)
// stock of a product. It is transient and never persisted.
//
// Scope authorization is the caller's responsibility: the upstream
// permission layer must have verified that the user may collect for the
// given hotel and department before this request reaches the engine.
type CollectionRequest struct {
	ProductID uuid.UUID       `validate:"required"`
	Quantity  decimal.Decimal `validate:"-"`
	UserID    uuid.UUID       `validate:"required"`
	HotelID   uuid.UUID       `validate:"required"`
	Scope     DepartmentScope `validate:"-"`
	Reason    Reason          `validate:"-"`
	Notes     string          `validate:"max=2000"`
}

// Validate checks the request before any transactional work begins.
// Returns a typed validation error so callers can branch on the code.
func (r *CollectionRequest) Validate() error {
	if !r.Quantity.IsPositive() {
		return shared.ErrInvalidQuantity
	}
	if !r.Scope.IsValid() {
		return shared.ErrMissingScope
	}
	if r.Reason == "" {
		r.Reason = ReasonUsage
	}
	if !r.Reason.IsValid() {
		return shared.NewDomainError("INVALID_REASON", "Unknown collection reason: "+r.Reason.String())
	}
	if err := requestValidator.Struct(r); err != nil {
		return shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	return nil
}

// PreviewRequest describes a dry-run collection. Identical filters to
// CollectionRequest minus the actor fields, since nothing is written.
type PreviewRequest struct {
	ProductID uuid.UUID       `validate:"required"`
	Quantity  decimal.Decimal `validate:"-"`
	HotelID   uuid.UUID       `validate:"required"`
	Scope     DepartmentScope `validate:"-"`
}

// Validate checks the preview request
func (r *PreviewRequest) Validate() error {
	if !r.Quantity.IsPositive() {
		return shared.ErrInvalidQuantity
	}
	if !r.Scope.IsValid() {
		return shared.ErrMissingScope
	}
	if err := requestValidator.Struct(r); err != nil {
		return shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	return nil
}
