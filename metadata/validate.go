package metadata

import (
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/util"
)

// ValidateCreate checks a record that is being committed for the first
// time, so no previous state exists. Field limits, creator arithmetic and
// uses consistency are enforced as in ValidateUpdate; additionally no
// creator except the acting authority itself may start out verified, and
// a collection reference cannot start out verified at all.
func ValidateCreate(args *MetadataArgs, authority types.Address) error {
	if args == nil {
		return ErrArgsIsNil
	}
	if err := validateData(args, nil, authority); err != nil {
		return err
	}
	if args.Collection != nil {
		if err := validateCollectionUpdate(nil, args.Collection); err != nil {
			return err
		}
	}
	return validateUses(args.Uses, nil)
}

// ValidateUpdate checks a proposed change from oldArgs to newArgs made by
// the acting authority. The rules run in a fixed order and the first
// violated rule decides the returned error:
//
//  1. the old record must be mutable
//  2. name/symbol/uri length caps, basis points cap
//  3. creator list shape: non-empty, within limit, unique addresses,
//     shares summing to exactly 100 without overflowing
//  4. verified-flag transitions (see classifyVerifiedTransition), also
//     for creators dropped from the list
//  5. a verified collection reference can neither be introduced nor
//     changed here
//  6. uses must be well formed and are frozen once partially consumed
//  7. primary sale happened flips only false to true
//  8. is mutable flips only true to false
//
// The function is pure: no state is touched, the caller applies the
// change only when nil is returned.
func ValidateUpdate(newArgs, oldArgs *MetadataArgs, authority types.Address) error {
	if newArgs == nil || oldArgs == nil {
		return ErrArgsIsNil
	}
	if !oldArgs.IsMutable {
		return ErrDataIsImmutable
	}
	if err := validateData(newArgs, oldArgs, authority); err != nil {
		return err
	}
	if newArgs.Collection != nil {
		if err := validateCollectionUpdate(oldArgs.Collection, newArgs.Collection); err != nil {
			return err
		}
	} else if oldArgs.Collection != nil && oldArgs.Collection.Verified {
		return ErrCannotUpdateVerifiedCollection
	}
	if err := validateUses(newArgs.Uses, oldArgs.Uses); err != nil {
		return err
	}
	if !newArgs.PrimarySaleHappened && oldArgs.PrimarySaleHappened {
		return ErrPrimarySaleFlipOnly
	}
	if newArgs.IsMutable && !oldArgs.IsMutable {
		return ErrIsMutableFlipOnly
	}
	return nil
}

// verifiedTransition classifies the change of one creator entry's
// verified flag against its previous state.
type verifiedTransition uint8

const (
	transitionAllowed verifiedTransition = iota
	// transitionVerify: verified would be set by someone other than the
	// creator itself.
	transitionVerify
	// transitionUnverify: verified would be cleared by someone other
	// than the creator itself.
	transitionUnverify
)

// classifyVerifiedTransition applies the self-attestation rule: the
// acting authority may set or clear only its own entry's flag; any other
// entry must keep the flag state it had at the same address, and an
// entry absent from the previous list cannot start out verified.
// A nil prev means the address was not present before.
func classifyVerifiedTransition(c Creator, prev *Creator, authority types.Address) verifiedTransition {
	if c.Address == authority {
		return transitionAllowed
	}
	if prev == nil {
		if c.Verified {
			return transitionVerify
		}
		return transitionAllowed
	}
	if c.Verified && !prev.Verified {
		return transitionVerify
	}
	if !c.Verified && prev.Verified {
		return transitionUnverify
	}
	return transitionAllowed
}

func validateData(newArgs, oldArgs *MetadataArgs, authority types.Address) error {
	if len(newArgs.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(newArgs.Symbol) > MaxSymbolLength {
		return ErrSymbolTooLong
	}
	if len(newArgs.URI) > MaxURILength {
		return ErrURITooLong
	}
	if newArgs.SellerFeeBasisPoints > MaxSellerFeeBasisPoints {
		return ErrBasisPointsTooHigh
	}

	creators := newArgs.Creators
	if len(creators) > MaxCreatorLimit {
		return ErrCreatorsTooLong
	}
	if len(creators) == 0 {
		return ErrNoCreators
	}

	newByAddr := make(map[types.Address]*Creator, len(creators))
	for i := range creators {
		newByAddr[creators[i].Address] = &creators[i]
	}
	if len(newByAddr) != len(creators) {
		return ErrDuplicateCreatorAddress
	}

	var oldByAddr map[types.Address]*Creator
	if oldArgs != nil {
		oldByAddr = make(map[types.Address]*Creator, len(oldArgs.Creators))
		for i := range oldArgs.Creators {
			oldByAddr[oldArgs.Creators[i].Address] = &oldArgs.Creators[i]
		}
	}

	var shareTotal uint8
	for _, c := range creators {
		sum, ok := util.SafeAddUint8(shareTotal, c.Share)
		if !ok {
			return ErrNumericalOverflow
		}
		shareTotal = sum

		switch classifyVerifiedTransition(c, oldByAddr[c.Address], authority) {
		case transitionVerify:
			return ErrCannotVerifyAnotherCreator
		case transitionUnverify:
			return ErrCannotUnverifyAnotherCreator
		}
	}
	if shareTotal != 100 {
		return ErrShareTotalMustBe100
	}

	// A creator that was verified may not be silently dropped from the
	// list, that would discard its attestation without its consent.
	if oldArgs != nil {
		for _, prev := range oldArgs.Creators {
			if prev.Address == authority {
				continue
			}
			if _, kept := newByAddr[prev.Address]; !kept && prev.Verified {
				return ErrCannotUnverifyAnotherCreator
			}
		}
	}
	return nil
}

// Never allow a collection reference to become verified through a plain
// metadata write: a verified incoming reference is only accepted when it
// is identical to the existing one.
func validateCollectionUpdate(existing, incoming *Collection) error {
	if incoming == nil || !incoming.Verified {
		return nil
	}
	if incoming.Eq(existing) {
		return nil
	}
	return ErrCollectionCannotBeVerified
}

func validateUses(incoming, current *Uses) error {
	if incoming != nil {
		if incoming.UseMethod == UseMethodSingle && (incoming.Total != 1 || incoming.Remaining != 1) {
			return ErrInvalidUseMethod
		}
		if incoming.UseMethod == UseMethodMultiple && (incoming.Total < 2 || incoming.Total < incoming.Remaining) {
			return ErrInvalidUseMethod
		}
	}
	if incoming == nil || current == nil {
		return nil
	}
	// Once the asset has been partially consumed the consumption terms
	// are frozen.
	if current.Total != current.Remaining {
		if incoming.UseMethod != current.UseMethod {
			return ErrUseMethodFrozen
		}
		if incoming.Total != current.Total || incoming.Remaining != current.Remaining {
			return ErrUsesFrozen
		}
	}
	return nil
}
