package params

import (
	"testing"

	"github.com/thelolagemann/onebit/internal/types"
)

func typesRoundTrip(t *testing.T, s types.Stater) *types.State {
	t.Helper()
	st := types.NewState()
	s.Save(st)
	loaded, err := types.StateFromBytes(st.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return loaded
}
