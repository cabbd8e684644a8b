package model

// ProxyAttribute names the resource that physically represents this
// resource for routing-endpoint purposes.
const ProxyAttribute = "proxy"

// ProxyID returns the identifier of the resource's proxy, or the
// resource's own identifier if it is not proxied.
func ProxyID(r *Resource) string {
	if id, ok := r.GetAttribute(ProxyAttribute).(string); ok && id != "" {
		return id
	}
	return r.ID()
}

// HasProxy reports whether the resource is represented by a distinct
// proxy resource.
func HasProxy(r *Resource) bool {
	return ProxyID(r) != r.ID()
}
