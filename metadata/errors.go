package metadata

import (
	"github.com/leafmint/leafmint-go/fault"
)

// Errors returned by the validation functions. Each belongs to a fault
// class so callers can match the category with errors.As.
var (
	ErrArgsIsNil          = fault.ValidationError("metadata args is nil")
	ErrNameTooLong        = fault.ValidationError("metadata name too long")
	ErrSymbolTooLong      = fault.ValidationError("metadata symbol too long")
	ErrURITooLong         = fault.ValidationError("metadata uri too long")
	ErrBasisPointsTooHigh = fault.ValidationError("basis points cannot be more than 10000")

	ErrNoCreators              = fault.ValidationError("no creators present")
	ErrCreatorsTooLong         = fault.ValidationError("creators list too long")
	ErrDuplicateCreatorAddress = fault.ValidationError("duplicate creator address")
	ErrShareTotalMustBe100     = fault.ValidationError("creator share total must equal exactly 100")
	ErrNumericalOverflow       = fault.ValidationError("numerical overflow")

	ErrDataIsImmutable     = fault.ValidationError("data is immutable")
	ErrInvalidUseMethod    = fault.ValidationError("invalid use method")
	ErrUseMethodFrozen     = fault.ValidationError("cannot change use method after first use")
	ErrUsesFrozen          = fault.ValidationError("cannot change uses after first use")
	ErrPrimarySaleFlipOnly = fault.ValidationError("primary sale happened can only be flipped to true")
	ErrIsMutableFlipOnly   = fault.ValidationError("is mutable can only be flipped to false")

	ErrCannotVerifyAnotherCreator     = fault.AuthorizationError("cannot verify another creator")
	ErrCannotUnverifyAnotherCreator   = fault.AuthorizationError("cannot unverify another creator")
	ErrCannotUpdateVerifiedCollection = fault.AuthorizationError("cannot update a verified collection")
	ErrCollectionCannotBeVerified     = fault.AuthorizationError("collection cannot be verified in this operation")
)
