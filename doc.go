// Package ruler provides the execution context shared by rule executors.
//
// The context itself lives in runtime/execution. This package adds a
// Service that creates contexts pre-populated from a seed document and wired
// with state listeners and tracing:
//
//	srv := ruler.New(ruler.WithSeedURL("file:///etc/ruler/seed.yaml"))
//	eCtx, _ := srv.NewContext(ctx, map[string]interface{}{"items": []interface{}{}})
//	_ = eCtx.Append("items", "a")
//	items, _ := eCtx.Get("items")
package ruler
