package service

import "bukubesar-api/internal/models"

// SubAkunKode derives the kode of a sub account from its parent akun and the
// number of sub accounts already under it. parent is nil when the parent id
// did not resolve, in which case the base is 0.
//
// A sub account named like its parent mirrors the parent's kode. Otherwise the
// first child gets base+1 and later ones base+10, base+20, ...
func SubAkunKode(parent *models.Akun, nama string, count int) int {
	base := 0
	if parent != nil {
		if nama == parent.Nama {
			return parent.Kode
		}
		base = parent.Kode
	}
	if count == 0 {
		return base + 1
	}
	return 10*count + base
}

// DataAkunKode derives the kode of a posting account from its parent sub
// account's kode (0 when unresolved) and the existing sibling count.
func DataAkunKode(base, count int) int {
	switch count {
	case 0:
		return base + 1
	case 1:
		return base + 2
	default:
		return base + count + 1
	}
}
