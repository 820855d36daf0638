// Package timerservice defines the runtime contracts that the installed
// timer-service factory nodes realize, together with small in-process
// implementations of each factory variant:
//
//   - LocalFactory: timers kept by this process, optionally restricted by a Filter
//   - DistributableFactory: timers handed to a TimerManagementProvider
//   - CompositeFactory: routes each timer to one of two sub-factories by its persistence class
//   - NonFunctionalFactory: rejects every timer operation with a fixed message
//
// Firing timers and storing them durably are the concern of the engines behind
// these contracts, not of this package.
package timerservice
