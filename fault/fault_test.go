package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const errBadShare = ValidationError("share total must be 100")

func TestErrorClasses(t *testing.T) {
	t.Run("sentinel match", func(t *testing.T) {
		require.EqualError(t, errBadShare, "share total must be 100")

		err := fmt.Errorf("updating leaf: %w", errBadShare)
		require.ErrorIs(t, err, errBadShare)
	})

	t.Run("class match", func(t *testing.T) {
		err := fmt.Errorf("updating leaf: %w", errBadShare)

		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, errBadShare, verr)

		var aerr AuthorizationError
		require.False(t, errors.As(err, &aerr))

		// the base type is not a catch-all, an error matches only its
		// own class
		var gerr GenericError
		require.False(t, errors.As(err, &gerr))
	})

	t.Run("same text, different class", func(t *testing.T) {
		require.NotErrorIs(t, errBadShare, QuotaError("share total must be 100"))
	})
}
