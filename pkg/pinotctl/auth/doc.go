// Package auth resolves controller credentials for pinotctl: OAuth2
// client-credentials tokens with an on-disk cache, basic-auth passwords kept in
// the OS keyring, and unverified inspection of bearer token claims.
package auth
