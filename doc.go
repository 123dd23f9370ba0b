// Package objstore provides a persistence layer with uniform
// create/read/update/delete access to a closed set of entity kinds, backed
// interchangeably by a relational database or a single JSON file.
//
// The storage backend is selected by configuration (HBNB_TYPE_STORAGE) and
// handed to callers through the Service façade:
//
//	srv, _ := objstore.New(ctx)
//	store := srv.Storage()
//	_ = store.New(ctx, model.NewState("California"))
//	_ = store.Save(ctx)
//	states, _ := store.All(ctx, model.KindState)
//	_ = srv.Shutdown(ctx)
//
// See the service/storage sub-packages for the engine contract and the two
// implementations.
package objstore
