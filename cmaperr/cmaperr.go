// Package cmaperr collects the sentinel error values returned across
// the module; callers match them with errors.Is rather than a custom
// error type hierarchy.
package cmaperr

import "errors"

var (
	// ErrNameInUse is returned by AddAttribute when a column with the
	// requested name already exists on the container.
	ErrNameInUse = errors.New("cmaps: attribute name already in use")

	// ErrMissing is returned by GetAttribute/RemoveAttribute when no
	// column with the requested name exists.
	ErrMissing = errors.New("cmaps: attribute not found")

	// ErrTypeMismatch is returned by GetAttribute when a column exists
	// under the requested name but was created with a different type
	// tag.
	ErrTypeMismatch = errors.New("cmaps: attribute type mismatch")

	// ErrTypeSizeMismatch is returned by GetAttributeForceType when the
	// requested type's binary size differs from the stored column's.
	ErrTypeSizeMismatch = errors.New("cmaps: attribute force-type size mismatch")

	// ErrIoVersionMismatch is returned by Load when a column's stored
	// chunk byte size disagrees with the column currently registered
	// under that name.
	ErrIoVersionMismatch = errors.New("cmaps: stored column format does not match current layout")

	// ErrIoTruncated is returned by Container.Load when the input ends
	// inside a stored column name or type tag. A stream that ends inside
	// a column's header, chunk or tail data fails with an error wrapping
	// the io error from encoding/binary instead, not with this sentinel.
	ErrIoTruncated = errors.New("cmaps: truncated container stream")

	// ErrSlotOutOfRange is returned by RemoveLine when the slot it is
	// asked to release is not live.
	ErrSlotOutOfRange = errors.New("cmaps: slot index out of range")

	// ErrNilDart is returned by DeleteDart when it is given the nil
	// dart. The sew primitives do not check for it.
	ErrNilDart = errors.New("cmaps: nil dart")
)
