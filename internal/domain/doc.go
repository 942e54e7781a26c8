// Package domain holds the types shared by the belchior command: output
// formats and the classified errors returned by the driver and the config
// loader.
package domain
