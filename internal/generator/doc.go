// Package generator renders templates and writes the results to disk.
//
// # Features
//
//   - Template rendering with a small helper library, parsed once per renderer
//   - Operations that validate before they write
//   - Refusal to overwrite files that were not generated by userprompt
//   - Transactions that restore previous file contents on failure
//
// # Transactions
//
//	var tx generator.Transaction
//	for _, op := range ops {
//	    if err := op.Validate(ctx, force); err != nil {
//	        return err
//	    }
//	    tx.Add(op)
//	}
//	if err := tx.Commit(ctx); err != nil {
//	    // Files written so far were restored or removed.
//	    return err
//	}
package generator
