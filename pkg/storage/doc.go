// Package storage manages the directory igcleaner writes run artifacts to.
//
// Files are written atomically through a temporary file and a rename, so a
// report is either complete or absent. The Manager remembers which names it
// wrote during the run.
//
// Usage:
//
//	manager, err := storage.NewManager(cfg.Report.Dir)
//	if err != nil {
//	    return err
//	}
//	path, err := manager.Save("igcleaner_2024-03-09_14-05-07.json", &buf)
package storage
