package sim

import (
	"fmt"
	"strings"
	"time"
)

const (
	// NotRegistered marks a file that has not been registered with a replica
	// catalogue.
	NotRegistered = -1

	// TypeUnknown marks a file whose type tag has not been assigned.
	TypeUnknown = 0

	// bytesPerMB converts the decimal megabytes used for file sizes.
	bytesPerMB = 1_000_000

	// metadataPacketSize is the fixed overhead, in bytes, of shipping a file's
	// attribute record between registries, on top of the variable name and
	// owner strings.
	metadataPacketSize = 1500
)

// FileRecord is a named, sized, owned data object registered on a storage
// device. A newly created record is a master copy; clones produced by
// CloneAsReplica and CloneAsMaster are fully independent value copies.
//
// FileRecord imposes no global uniqueness: one record per (name, device) pair
// is enforced by the owning StorageDevice.
type FileRecord struct {
	name   string
	sizeMB int64

	ownerName      string
	checksum       int
	typeTag        int
	registrationID int
	cost           float64
	masterCopy     bool
	deleted        bool

	creationTime    time.Time // wall clock, set once at construction
	lastUpdateTime  float64   // simulated seconds, >= 0
	transactionTime float64   // simulated seconds, >= 0

	// Name of the device currently holding the record, "" when unattached.
	// A non-owning handle: the device controls attachment via AddFile/RemoveFile.
	deviceName string
}

// ValidateFileName checks that a file name is non-blank.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name cannot be blank: %w", ErrValidation)
	}
	return nil
}

// NewFileRecord creates a master-copy file with the given name and size in
// MB. Blank names and non-positive sizes fail with ErrValidation.
func NewFileRecord(name string, sizeMB int64) (*FileRecord, error) {
	f := &FileRecord{
		registrationID: NotRegistered,
		typeTag:        TypeUnknown,
		masterCopy:     true,
		creationTime:   time.Now(),
	}
	if err := f.SetName(name); err != nil {
		return nil, err
	}
	if err := f.SetSize(sizeMB); err != nil {
		return nil, err
	}
	return f, nil
}

// CloneAsReplica returns an independent copy of the record marked as a
// replica. Content attributes (size, owner, checksum, cost, type, deletion
// flag) carry over; the registration ID resets to NotRegistered and the clone
// starts unattached from any device.
func (f *FileRecord) CloneAsReplica() *FileRecord { return f.clone(false) }

// CloneAsMaster returns an independent copy of the record marked as a master
// copy, with the same attribute handling as CloneAsReplica.
func (f *FileRecord) CloneAsMaster() *FileRecord { return f.clone(true) }

func (f *FileRecord) clone(masterCopy bool) *FileRecord {
	c := *f
	c.masterCopy = masterCopy
	c.registrationID = NotRegistered
	c.deviceName = ""
	c.transactionTime = 0
	c.creationTime = time.Now()
	return &c
}

// SetName renames the file. Blank names fail with ErrValidation.
func (f *FileRecord) SetName(name string) error {
	if err := ValidateFileName(name); err != nil {
		return err
	}
	f.name = name
	return nil
}

// Name returns the file name.
func (f *FileRecord) Name() string { return f.name }

// SetSize sets the file size in MB. Sizes must stay strictly positive.
func (f *FileRecord) SetSize(sizeMB int64) error {
	if sizeMB <= 0 {
		return fmt.Errorf("file size must be > 0 MB, got %d: %w", sizeMB, ErrValidation)
	}
	f.sizeMB = sizeMB
	return nil
}

// SizeMB returns the file size in MB.
func (f *FileRecord) SizeMB() int64 { return f.sizeMB }

// SizeBytes returns the file size in bytes.
func (f *FileRecord) SizeBytes() int64 { return f.sizeMB * bytesPerMB }

// AttributeSize returns the size in bytes of the record's metadata when
// shipped between registries. This is not the file content size.
func (f *FileRecord) AttributeSize() int {
	return metadataPacketSize + len(f.name) + len(f.ownerName)
}

// SetOwnerName sets the owner of the file. Any value is accepted, including
// the empty string to clear ownership.
func (f *FileRecord) SetOwnerName(owner string) { f.ownerName = owner }

// OwnerName returns the owner of the file, "" when unowned.
func (f *FileRecord) OwnerName() string { return f.ownerName }

// SetChecksum records the file checksum. Checksums are free integers.
func (f *FileRecord) SetChecksum(checksum int) { f.checksum = checksum }

// Checksum returns the recorded checksum, 0 when unset.
func (f *FileRecord) Checksum() int { return f.checksum }

// SetType sets the free-form integer type tag.
func (f *FileRecord) SetType(typeTag int) { f.typeTag = typeTag }

// Type returns the type tag, TypeUnknown when never assigned.
func (f *FileRecord) Type() int { return f.typeTag }

// SetRegistrationID records the ID published by a replica catalogue.
func (f *FileRecord) SetRegistrationID(id int) { f.registrationID = id }

// RegistrationID returns the catalogue ID, NotRegistered when unregistered.
func (f *FileRecord) RegistrationID() int { return f.registrationID }

// IsRegistered reports whether the file has a catalogue registration.
func (f *FileRecord) IsRegistered() bool { return f.registrationID != NotRegistered }

// SetCost sets the cost associated with the file. Negative costs fail with
// ErrValidation.
func (f *FileRecord) SetCost(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("file cost must be >= 0, got %v: %w", cost, ErrValidation)
	}
	f.cost = cost
	return nil
}

// Cost returns the cost associated with the file.
func (f *FileRecord) Cost() float64 { return f.cost }

// IsMasterCopy reports whether the record is a master copy or a replica.
func (f *FileRecord) IsMasterCopy() bool { return f.masterCopy }

// SetMasterCopy flips the master-copy role flag. Replication has no content
// effect, only identity.
func (f *FileRecord) SetMasterCopy(masterCopy bool) { f.masterCopy = masterCopy }

// MarkDeleted soft-deletes (or restores) the record. Deleted files remain
// addressable; capacity accounting is the owning device's concern.
func (f *FileRecord) MarkDeleted(deleted bool) { f.deleted = deleted }

// IsDeleted reports whether the record was soft-deleted.
func (f *FileRecord) IsDeleted() bool { return f.deleted }

// CreationTime returns the wall-clock instant the record was constructed.
func (f *FileRecord) CreationTime() time.Time { return f.creationTime }

// SetUpdateTime records the simulated time of the last content update.
// Negative times fail with ErrValidation.
func (f *FileRecord) SetUpdateTime(t float64) error {
	if t < 0 {
		return fmt.Errorf("update time must be >= 0, got %v: %w", t, ErrValidation)
	}
	f.lastUpdateTime = t
	return nil
}

// LastUpdateTime returns the simulated time of the last content update.
func (f *FileRecord) LastUpdateTime() float64 { return f.lastUpdateTime }

// SetTransactionTime records the simulated duration of the last add, remove
// or get operation on the file, as returned by the device that performed it.
// Negative times fail with ErrValidation.
func (f *FileRecord) SetTransactionTime(t float64) error {
	if t < 0 {
		return fmt.Errorf("transaction time must be >= 0, got %v: %w", t, ErrValidation)
	}
	f.transactionTime = t
	return nil
}

// TransactionTime returns the simulated duration of the last operation.
func (f *FileRecord) TransactionTime() float64 { return f.transactionTime }

// DeviceName returns the name of the device holding the record, "" when
// unattached.
func (f *FileRecord) DeviceName() string { return f.deviceName }

// setDevice is called by StorageDevice on add ("name") and remove ("").
func (f *FileRecord) setDevice(name string) { f.deviceName = name }

func (f *FileRecord) String() string { return f.name }
