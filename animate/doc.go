// Package animate paces a search.Stepper for a live display and guards
// against two searches running on the same grid at once.
//
// What:
//
//   - Animator.Play pulls events from a Stepper, hands each to a draw
//     callback and sleeps per role: Delays.Search after an explored cell,
//     Delays.Frontier after a frontier update and Delays.Path after each
//     path cell. Stop or a cancelled context cancels the Stepper between
//     events.
//   - Guard serialises searches per key. LocalGuard is the in-process
//     implementation; store.RedisGuard is the distributed one.
//
// Errors:
//
//   - ErrSearchInProgress: Acquire found the key already held.
package animate
