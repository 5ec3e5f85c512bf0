package shopify

// orderStatusQuery fetches the newest order matching a search expression
// with just enough fulfillment data to place it on the timeline.
const orderStatusQuery = `
query OrderStatus($q: String!) {
  orders(first: 1, query: $q, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        name
        createdAt
        displayFulfillmentStatus
        fulfillments(first: 10) {
          trackingInfo(first: 10) {
            number
            url
          }
        }
      }
    }
  }
}
`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type orderStatusResponse struct {
	Data struct {
		Orders struct {
			Edges []struct {
				Node orderNode `json:"node"`
			} `json:"edges"`
		} `json:"orders"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type orderNode struct {
	Name                     string `json:"name"`
	CreatedAt                string `json:"createdAt"`
	DisplayFulfillmentStatus string `json:"displayFulfillmentStatus"`
	Fulfillments             []struct {
		TrackingInfo []struct {
			Number *string `json:"number"`
			URL    *string `json:"url"`
		} `json:"trackingInfo"`
	} `json:"fulfillments"`
}
