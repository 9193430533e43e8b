// Package apiresponses provides the controller style JSON error envelope
// ({"code": <status>, "error": <message>}) and gin helpers that write it.
package apiresponses
