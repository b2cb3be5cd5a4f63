// Package state provides the observable containers the client keeps in sync
// with the review service.
//
// # Overview
//
// A Container holds one value and notifies subscribers whenever it changes.
// The Store groups the containers the application needs:
//
//   - Auth: session state; IsModerator mirrors User.IsModerator
//   - Products: the product list shown on the landing view
//   - CurrentProduct: the product whose detail view is open
//   - Comments: the comment thread of the current product
//   - UserVotes: the current user's vote per review id (VoteNone = no vote)
//   - FlaggedReviews: reviews the current user has flagged; entries only
//     ever become true
//
// The Store is created by the application root and passed by reference to
// the synchronization layer and the UI. There are no package-level
// singletons.
//
// # Container Contract
//
//	unsubscribe := store.Products.Subscribe(func(p []api.Product) {
//		render(p)           // called now with the current list
//	})
//	store.Products.Set(list) // render called once more
//	store.Products.Update(func(p []api.Product) []api.Product {
//		return append(p, extra...)
//	})                       // and once more
//	unsubscribe()
//
// Subscribe always delivers the current value first. Each Set or Update then
// delivers exactly one notification to every subscriber, in call order.
//
// # Concurrency Model
//
// Each container has its own locks, so containers never block each other.
// Writes to one container are serialized together with their
// notifications; a subscriber never observes two changes out of order. No
// ordering is promised across containers: an operation that writes two
// containers may be observed half-applied.
//
// # Defensive Copying
//
// Slices, maps and the current product are cloned on every write and read.
// A subscriber may keep or mutate the value it receives without affecting
// the container or other subscribers.
package state
