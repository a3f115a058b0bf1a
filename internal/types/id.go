// README: Common identifier type used across modules.
package types

// ID is a row identifier as stored in Postgres (uuid rendered as text).
type ID string
