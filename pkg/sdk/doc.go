// Package scholarsearch is an embeddable Go client for the scholarship
// search engine. It opens the relational store directly and, when a vector
// index and embedder are configured, adds semantic candidates to search.
//
//	client, _ := scholarsearch.New(ctx,
//	    scholarsearch.WithSQLite("data/scholarships.db"),
//	    scholarsearch.WithRedis("localhost:6379", ""),
//	    scholarsearch.WithEmbedder(myEmbedder),
//	)
//	defer client.Close()
//
//	_, _ = client.Upsert(ctx, records)
//	_, _ = client.Reindex(ctx)
//	res, _ := client.Search(ctx, "engineering scholarships for girls in Pune")
//	for _, s := range res.Items {
//	    fmt.Println(s.Name, s.Amount)
//	}
package scholarsearch
