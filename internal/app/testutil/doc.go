// Package testutil provides test doubles and fixtures for the briefly packages.
//
//   - StubAdapter: scripted provider.Adapter with call counting
//   - MockAdapter: testify mock of provider.Adapter
//   - MockDistillService, MockProviderService, MockStatsService: handler test doubles
//   - fixtures.go: sample chats, transcripts and results
//
// Typical use:
//
//	groq := testutil.NewStubAdapter("groq-llama", provider.OperationSummarize, 10).
//	    WithSummary(" Customer requests refund\n")
//	registry := testutil.RegistryWith(t, groq)
package testutil
