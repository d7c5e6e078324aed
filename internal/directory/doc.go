// Package directory is the data-access layer of RentDesk. It keeps users,
// rooms, tenant registrations, rent payments and password-reset tokens as
// JSON tables in a key-value store and exposes the operations the front end
// needs: login and sign-up, room inventory, tenant registration, the payment
// ledger, the password-reset flow and the dashboard aggregates.
//
// Every operation reads the whole table it touches, works on it in memory
// and writes it back. Rows that fail to decode or validate are moved to a
// "<key>.quarantine" table and skipped, so a damaged table degrades to the
// rows that are still readable instead of failing the call.
package directory
