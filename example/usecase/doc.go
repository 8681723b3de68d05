// Package usecase demonstrates the three coordinator styles end to end:
// staging generic commands on the classical coordinator, staging typed
// commands through the aggregate staging repositories, and driving an
// explicit transaction lifecycle on a session.
//
// Each use case performs the same business operation, placing an order for
// a user at a shop, so the styles can be compared directly.
package usecase
