package cnft

import (
	"github.com/leafmint/leafmint-go/fault"
)

// Errors returned by the processor. Every sentinel carries its fault
// class, so callers can branch on the class with errors.As and on the
// exact condition with errors.Is.
var (
	ErrParamsIsNil      = fault.ValidationError("parameters are nil")
	ErrTreeIsNil        = fault.ValidationError("tree address is missing")
	ErrRecipientIsNil   = fault.ValidationError("recipient address is missing")
	ErrNewOwnerIsNil    = fault.ValidationError("new owner address is missing")
	ErrDelegateIsNil    = fault.ValidationError("delegate address is missing")
	ErrAuthorityIsNil   = fault.ValidationError("authority address is missing")
	ErrCreatorNotFound  = fault.ValidationError("creator is not present in the metadata")
	ErrApprovalOverflow = fault.ValidationError("mint approval overflows")

	ErrSignerIsNil      = fault.AuthorizationError("signer is missing")
	ErrNotTreeAuthority = fault.AuthorizationError("signer is not the tree creator or delegate")
	ErrNotTreeCreator   = fault.AuthorizationError("signer is not the tree creator")
	ErrNotTreeDelegate  = fault.AuthorizationError("signer is not the tree delegate")
	ErrNotLeafAuthority = fault.AuthorizationError("signer is not the leaf owner or delegate")
	ErrNotLeafOwner     = fault.AuthorizationError("signer is not the leaf owner")
	ErrNotCreator       = fault.AuthorizationError("signer is not the named creator")

	ErrNoMintRequest     = fault.QuotaError("no approved mint request for the signer")
	ErrMintQuotaExceeded = fault.QuotaError("mint request quota exhausted")
	ErrTreeFull          = fault.QuotaError("tree mint capacity exhausted")

	ErrHashMismatch = fault.ProofError("supplied metadata does not hash to the committed leaf")

	ErrTreeExists      = fault.StateError("tree already exists")
	ErrTreeNotFound    = fault.StateError("tree does not exist")
	ErrRequestNotFound = fault.StateError("mint request does not exist")
	ErrVoucherExists   = fault.StateError("leaf is already redeemed")
	ErrVoucherNotFound = fault.StateError("voucher does not exist")
	ErrTreeOutOfSync   = fault.StateError("tree engine and tree record disagree")
	ErrNoAssetMinter   = fault.StateError("no asset minter configured")
)
