package zooapi

import (
	"context"
	"testing"

	"github.com/pact-foundation/pact-go/dsl"
	"github.com/shaie/browze/pkg/zooclient"
	"github.com/stretchr/testify/require"
)

func Test_BrowseShallow(t *testing.T) {
	var test = func() (err error) {
		req := require.New(t)

		node, err := newClient(t).Browse(context.Background(), "/a", false)
		req.NoError(err)
		req.Equal("a", node.Tree.Label)
		req.Len(node.Tree.Children, 2)
		req.Equal("hello", node.Data)
		req.Equal(int32(2), node.Stat.NumChildren)

		return nil
	}

	pact.AddInteraction().
		Given("A store with a directory /a holding b and x").
		UponReceiving("A request to browse /a").
		WithRequest(dsl.Request{
			Method: "GET",
			Path:   dsl.String("/api/zoo/browse/a"),
			Query: dsl.MapMatcher{
				"full_hierarchy": dsl.String("false"),
			},
		}).
		WillRespondWith(dsl.Response{
			Status: 200,
			Headers: dsl.MapMatcher{
				"Content-Type": dsl.String("application/json; charset=utf-8"),
			},
			Body: map[string]interface{}{
				"tree": map[string]interface{}{
					"label":  "a",
					"parent": "/",
					"leaf":   false,
					"children": []interface{}{
						map[string]interface{}{"label": "b", "parent": "/a", "leaf": false},
						map[string]interface{}{"label": "x", "parent": "/a", "leaf": true},
					},
				},
				"data": "hello",
				"stat": map[string]interface{}{
					"czxid":          dsl.Like(1),
					"mzxid":          dsl.Like(1),
					"ctime":          dsl.Like(1546300800000),
					"mtime":          dsl.Like(1546300800000),
					"version":        0,
					"cversion":       dsl.Like(2),
					"aversion":       0,
					"ephemeralOwner": 0,
					"dataLength":     5,
					"numChildren":    2,
					"pzxid":          dsl.Like(3),
				},
			},
		})

	if err := pact.Verify(test); err != nil {
		t.Fatalf("Error on Verify: %v", err)
	}
}

func Test_BrowseFullHierarchy(t *testing.T) {
	var test = func() (err error) {
		req := require.New(t)

		node, err := newClient(t).Browse(context.Background(), "/a", true)
		req.NoError(err)
		req.Equal("/", node.Tree.Label)
		req.True(node.Tree.IsRoot())
		req.Equal("a", node.Tree.Children[0].Label)
		req.Nil(node.Data)

		return nil
	}

	pact.AddInteraction().
		Given("A store with a directory /a").
		UponReceiving("A request to browse /a with the full hierarchy").
		WithRequest(dsl.Request{
			Method: "GET",
			Path:   dsl.String("/api/zoo/browse/a"),
			Query: dsl.MapMatcher{
				"full_hierarchy": dsl.String("true"),
			},
		}).
		WillRespondWith(dsl.Response{
			Status: 200,
			Headers: dsl.MapMatcher{
				"Content-Type": dsl.String("application/json; charset=utf-8"),
			},
			Body: map[string]interface{}{
				"tree": map[string]interface{}{
					"label": "/",
					"leaf":  false,
					"children": []interface{}{
						map[string]interface{}{
							"label":    "a",
							"parent":   "/",
							"leaf":     false,
							"children": []interface{}{},
						},
					},
				},
				"data": nil,
				"stat": map[string]interface{}{
					"numChildren": 1,
				},
			},
		})

	if err := pact.Verify(test); err != nil {
		t.Fatalf("Error on Verify: %v", err)
	}
}

func Test_BrowseNotFound(t *testing.T) {
	var test = func() (err error) {
		req := require.New(t)

		_, err = newClient(t).Browse(context.Background(), "/nope", false)
		req.EqualError(err, "Path not found in ZooKeeper: /nope")
		fetchErr, ok := err.(*zooclient.FetchError)
		req.True(ok)
		req.Equal(404, fetchErr.StatusCode)

		return nil
	}

	pact.AddInteraction().
		Given("A store without /nope").
		UponReceiving("A request to browse /nope").
		WithRequest(dsl.Request{
			Method: "GET",
			Path:   dsl.String("/api/zoo/browse/nope"),
			Query: dsl.MapMatcher{
				"full_hierarchy": dsl.String("false"),
			},
		}).
		WillRespondWith(dsl.Response{
			Status: 404,
			Headers: dsl.MapMatcher{
				"Content-Type": dsl.String("text/plain; charset=utf-8"),
			},
			Body: "Path not found in ZooKeeper: /nope",
		})

	if err := pact.Verify(test); err != nil {
		t.Fatalf("Error on Verify: %v", err)
	}
}
