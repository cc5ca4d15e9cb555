// Package host runs visualization sessions inside containers.
//
// A [Host] mounts a pattern into a container by building a scene, camera
// and renderer sized to it, asking a factory for the instance and
// scheduling a self-perpetuating frame task on the event loop. Mounting
// over a live container replaces its session; destroying is idempotent.
// Host failures are soft: missing containers and unknown patterns yield a
// nil instance or the fallback, never an error, and a panicking session
// stops without affecting the others.
package host
