// Package walk is the public API of dirmeta: it collects metadata for a whole
// directory tree and watches paths for filesystem changes.
//
// # Walking
//
//	meta, err := walk.Walk("/srv/data", walk.DefaultOptions())
//	if err != nil {
//		return err // the root itself could not be opened
//	}
//	fmt.Println(meta.FileCount(), meta.HumanSize())
//	for _, e := range meta.Errors {
//		fmt.Println(e.Kind, e.Message)
//	}
//
// WalkContext runs the same traversal but abandons it as soon as the context
// is cancelled:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
//	defer cancel()
//	meta, err := walk.WalkContext(ctx, "/srv/data", walk.DefaultOptions())
//
// # Querying
//
//	large := walk.Find(meta, walk.FindOptions{LargerSize: 1 << 20, MIME: "image/"})
//	fmt.Println(walk.Summarize(meta, 10))
//
// # Watching
//
// A Watcher forwards normalized events to a Channel until the consumer closes
// it:
//
//	ch := walk.NewChannel(64)
//	errc := walk.NewWatcher(ch).Path("/srv/data").Spawn(walk.MaskCreate | walk.MaskDelete)
//	for {
//		select {
//		case o := <-ch.Outcomes():
//			fmt.Println(o.Kind, o.Name)
//		case err := <-errc:
//			return err
//		}
//	}
package walk
