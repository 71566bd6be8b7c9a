package pool

import (
	"fmt"
	"reflect"
)

// checkHooks validates the user-supplied hooks against the pool's item type
// and returns them typed. Hook options are not generic over the pool, so a
// hook built for a different item type is only caught here.
//
// Panics:
//
//	If a hook's item type does not match T.
func checkHooks[T any](cfg *workerPoolConfig) (
	beforeTaskStart func(T),
	onTaskEnd func(T, error),
) {
	itemType := reflect.TypeFor[T]()

	if cfg.beforeTaskStart != nil {
		fn, ok := cfg.beforeTaskStart.(func(T))
		if !ok {
			panic(fmt.Sprintf("WithBeforeTaskStart hook has type %T, but pool processes type %v",
				cfg.beforeTaskStart, itemType))
		}
		beforeTaskStart = fn
	}

	if cfg.onTaskEnd != nil {
		fn, ok := cfg.onTaskEnd.(func(T, error))
		if !ok {
			panic(fmt.Sprintf("WithOnTaskEnd hook has type %T, but pool processes type %v",
				cfg.onTaskEnd, itemType))
		}
		onTaskEnd = fn
	}

	return beforeTaskStart, onTaskEnd
}
