// Package store persists solved layouts under generated ids.
//
// The [Store] interface has two implementations: [MongoStore] for durable,
// shared storage behind the HTTP API, and [MemStore] for tests and for
// running the server without a database. Both hand out uuid ids on Save and
// return [ErrNotFound] for unknown ids.
//
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "orrery")
//	id, err := st.Save(ctx, l)
//	l, err := st.Get(ctx, id)
package store
