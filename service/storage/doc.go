// Package storage defines the Engine contract implemented by the relational
// (db) and file (file) storage engines, together with the errors they share.
//
// Engines are constructed explicitly and injected into callers. The usual
// lifecycle is:
//
//	engine := file.New()
//	_ = engine.Reload(ctx)
//	_ = engine.New(ctx, model.NewState("California"))
//	_ = engine.Save(ctx)
//	_ = engine.Close(ctx)
package storage
