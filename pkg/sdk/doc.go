// Package semsearch provides an embedded Go client for the semantic item
// search engine backed by Redis. It wires the encoder, ranker and catalog
// repositories in-process, without the HTTP API.
//
//	client, _ := semsearch.New(ctx,
//	    semsearch.WithRedis("localhost:6379", ""),
//	    semsearch.WithModelArtifact("/models/encoder.json"),
//	)
//	defer client.Close()
//
//	items, _ := client.Search(ctx, "red leather jacket")
//	similar, _ := client.Recommend(ctx, items[0].ID)
package semsearch
