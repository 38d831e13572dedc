// Package services implements clients for the streaming service a playlist is published to.
//
// [YouTubeService] talks to a local HTTP proxy wrapping the ytmusicapi Python library.
// Requests carry an OAuth2 bearer token loaded from the ytmusicapi oauth.json token file;
// the token is refreshed against Google's token endpoint when it expires.
//
// Proxy endpoints:
//
//	GET  /api/library/playlists?limit=N   library playlists
//	POST /api/playlists                   create playlist
//	POST /api/playlists/{id}/items        add videos
//	GET  /api/search?q=Q&filter=F         search songs or videos
package services
