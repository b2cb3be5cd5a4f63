// Package syncer keeps a state.Store in line with the review backend.
//
// Each operation issues one request, or a short fixed sequence, and then
// either writes the result into the store or returns a default. Mutations
// on comments re-read the whole thread afterwards instead of patching it
// locally. No operation returns an error: failures are logged through
// zerolog and surface as false, nil, an empty list or an unsuccessful
// result.
//
// LoadUserVotesForProduct is the only operation with concurrent requests
// in flight; it joins every lookup before writing the merged answer.
package syncer
