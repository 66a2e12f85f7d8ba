package indicator_test

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

func ExampleEngine_Bind() {
	e := indicator.New(indicator.Options{
		Transitions: indicator.NewTimedTransitions(0),
	})
	defer e.Dispose()

	idle := make(chan struct{})
	e.Subscribe(indicator.ObserverFunc(func(ev indicator.Event) {
		if ev.Kind == indicator.EventIdle {
			close(idle)
		}
	}))

	e.Bind(indicator.FromFuture(indicator.FutureFunc(func(ctx context.Context) error {
		return nil
	})))

	<-idle
	fmt.Println(e.State().Phase)
	// Output: idle
}
