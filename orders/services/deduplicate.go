package services

import "fmt"

// hashLookupChunkSize caps the number of hashes per storage lookup so long
// imports don't exceed backend query-size limits.
const hashLookupChunkSize = 50

// dedupeCandidates drops every candidate whose fingerprint is already stored
// or was already produced earlier in this run. Candidates are visited in
// original order, so when one file contains identical orders the first
// occurrence wins.
func (s *ImportService) dedupeCandidates(candidates []candidateOrder) ([]candidateOrder, []DuplicateOrder, error) {
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	hashes := make([]string, 0, len(candidates))
	for i := range candidates {
		hashes = append(hashes, candidates[i].importHash)
	}

	existing := make(map[string]struct{})
	for start := 0; start < len(hashes); start += hashLookupChunkSize {
		end := min(start+hashLookupChunkSize, len(hashes))
		found, err := s.orders.FindOrdersByImportHashes(hashes[start:end])
		if err != nil {
			return nil, nil, fmt.Errorf("checking stored import hashes: %w", err)
		}
		for _, order := range found {
			existing[order.ImportHash] = struct{}{}
		}
	}

	seenThisRun := make(map[string]int)
	var kept []candidateOrder
	var duplicates []DuplicateOrder
	for _, candidate := range candidates {
		if _, stored := existing[candidate.importHash]; stored {
			duplicates = append(duplicates, DuplicateOrder{
				ImportHash:    candidate.importHash,
				InvoiceNumber: candidate.invoiceNumber,
				RowIndex:      candidate.firstRowIndex,
				Provenance:    "existing order",
			})
			continue
		}
		if firstRow, repeated := seenThisRun[candidate.importHash]; repeated {
			duplicates = append(duplicates, DuplicateOrder{
				ImportHash:    candidate.importHash,
				InvoiceNumber: candidate.invoiceNumber,
				RowIndex:      candidate.firstRowIndex,
				Provenance:    fmt.Sprintf("row %d in this file", firstRow+1),
			})
			continue
		}
		seenThisRun[candidate.importHash] = candidate.firstRowIndex
		kept = append(kept, candidate)
	}

	return kept, duplicates, nil
}
