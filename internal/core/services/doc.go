// Package services implements the driving port interfaces.
// Services contain the ranking logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on domain, the ports and the logger.
// Network access, storage and presentation stay behind driven ports.
package services
