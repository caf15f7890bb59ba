// Package libdaybook is a client implementation of the Daybook server API.
package libdaybook
