// Package apiconnect holds Connect handlers and clients for the settleup.v1
// services. The messages are the plain structs of package api, exchanged as
// JSON through api.Codec. Procedures follow the services declared in
// proto/settleup/v1.
package apiconnect
