package grammar

import (
	"fmt"

	"github.com/baditaflorin/go_text_normalization/pkg/fst"
)

// Build runs compile and reports a structural misuse of the algebra as an
// error instead of a panic. Other panics propagate.
func Build(name string, compile func() *fst.Fst) (f *fst.Fst, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fe, ok := r.(*fst.Error)
		if !ok {
			panic(r)
		}
		f, err = nil, fmt.Errorf("grammar %s: %w", name, fe)
	}()
	return compile(), nil
}
