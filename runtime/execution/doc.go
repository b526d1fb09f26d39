// Package execution holds the execution context shared by the executors of a
// multi-step process.
//
// A Context is a string keyed bag of values. Set stores, Get reads, and Add
// appends into a value that already holds a slice or a string keyed map:
//
//	ctx := execution.NewContext(map[string]interface{}{"items": []interface{}{}})
//	_ = ctx.Append("items", "a")
//	items, _ := ctx.Get("items") // []interface{}{"a"}
//
// Appending without a sub-key to a map uses the next integer key ("0", "1",
// ...). A sub-key on a slice must be an index no greater than its length.
package execution
