package signals_test

import (
	"fmt"
	"testing"

	"github.com/delaneyj/cellparty/signals"
)

func BenchmarkPropagate(b *testing.B) {
	for _, w := range []int{1, 10, 100} {
		for _, h := range []int{1, 10} {
			b.Run(fmt.Sprintf("%dx%d", w, h), func(b *testing.B) {
				rs := signals.CreateReactiveSystem(nil)
				src := signals.Signal(rs, 1)
				for i := 0; i < w; i++ {
					var last signals.Reader[int] = src
					for j := 0; j < h; j++ {
						prev := last
						last = signals.Computed(func() int {
							return prev.Value() + 1
						})
					}
					signals.Effect(rs, func() error {
						last.Value()
						return nil
					})
				}

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					src.SetValue(src.Peek() + 1)
				}
			})
		}
	}
}
