//go:build !chanscope_off

package chanscope

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/zulfikawr/chanscope/internal/registry"
)

// Stream instruments a pull-based sequence. Every value the consumer
// pulls is counted as one yield; when src is exhausted the entity is
// marked closed. Breaking out of the range early leaves the entity
// active, mirroring a pull-based source that was dropped mid-iteration.
func Stream[T any](src iter.Seq[T], opts ...Option) iter.Seq[T] {
	reg := ensureInit()
	o := buildOptions(opts)
	itemSize := int(reflect.TypeFor[T]().Size())
	id := reg.Register(registry.RegisterOptions{
		Kind:       registry.KindStream,
		Capacity:   -1,
		Label:      o.label,
		Source:     callSite(2),
		TypeName:   reflect.TypeFor[T]().String(),
		TypeSize:   itemSize,
		LogEnabled: o.log,
	})
	return func(yield func(T) bool) {
		for v := range src {
			if o.log {
				msg := fmt.Sprintf("%v", v)
				reg.RecordYield(id, len(msg), msg)
			} else {
				reg.RecordYield(id, itemSize, "")
			}
			if !yield(v) {
				return
			}
		}
		reg.Close(id)
	}
}
