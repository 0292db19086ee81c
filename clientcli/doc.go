// Package clientcli provides a client library for the filewriter HTTP API.
//
// It supports list, create, get, update, delete and search operations and
// profile-based configuration for managing connections to multiple servers.
//
// # Basic Usage
//
// Create a client and store a file:
//
//	client, err := clientcli.New(&clientcli.Config{Endpoint: "http://localhost:3000"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Create(ctx, clientcli.WriteOptions{
//		Text: "hello",
//		Tags: []string{"greeting"},
//	})
//
// Errors returned by the server are *APIError values and can be matched with
// errors.Is against ErrNotFound and ErrBadRequest.
//
// # Profile Configuration
//
// Use profiles to manage multiple server configurations:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.GetProfile("production")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatList(os.Stdout, result)
package clientcli
