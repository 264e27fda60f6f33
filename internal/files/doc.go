// Package files resolves the batch inputs on disk.
//
// Discovery maps the configured subsidiary extracts to files in the data
// directory, in configuration order, and lists the workbooks and CSV files
// found there so that stray exports nobody consolidates can be reported.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.DataDir)
//	extracts := discovery.FindEntityExtracts(cfg.Pipeline.Entities)
//	for _, ex := range extracts {
//	    if !ex.Exists {
//	        continue
//	    }
//	    // load ex.Path for ex.Entity
//	}
package files
