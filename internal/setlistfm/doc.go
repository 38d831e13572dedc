// Package setlistfm retrieves setlist data from the setlist.fm REST API.
//
// Every call goes through one request protocol (see [Client.Get]):
//
//   - fixed headers: Accept, x-api-key, Accept-Language and a User-Agent naming the client
//   - HTTP 429 is retried after the Retry-After header, or twice the current backoff when absent,
//     up to a fixed number of attempts; then the call fails with [shared.ErrRetryExhausted]
//   - any other error status fails immediately with a [*StatusError]
//   - a successful call is always followed by a fixed base delay
//
// [Client.FetchSetlistsForYear] pages through an artist's setlists newest first and stops once
// the API reports no more pages, a page is empty, the last page is reached, or a setlist older
// than the target year has been seen. The API is assumed to return setlists reverse-chronologically.
//
// Wire types normalize the set and song fields, which setlist.fm sends as either a single
// object or an array, into slices at decode time.
package setlistfm
