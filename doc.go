// Package filewriter stores free-text files in an object store and, when
// enabled, annotates each file with tags kept in a relational table.
//
// # Key Components
//
//   - FileService: composes the object store and the tag repository
//   - ObjectStore: interface for object persistence (S3, local filesystem)
//   - TagRepo: interface for tag persistence (PostgreSQL, SQLite)
//
// The two stores are written independently. A failure between the object
// write and the tag write leaves them divergent; FileService.Reconcile reports
// (and optionally prunes) that divergence.
//
// # Example Usage
//
//	svc := filewriter.NewFileService(store, repo, filewriter.ServiceConfig{})
//
//	entry, err := svc.Create(ctx, filewriter.WriteRequest{Text: "hello", Tags: []string{"greeting"}})
//
//	file, err := svc.Get(ctx, entry.Filename)
//
// See the http package for the REST API and the s3store, filesystem and
// database packages for the adapters.
package filewriter
