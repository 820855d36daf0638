// Package hcl_adapter reads deployment descriptors written in HCL and
// translates them into the format-agnostic config.Model.
//
// A descriptor file holds any number of `deployment` blocks:
//
//	deployment "orders.jar" {
//	  application = "shop"
//	  module      = "orders"
//	  parent      = "shop.ear"
//
//	  component "Scheduler" {
//	    timeout_methods = true
//	  }
//
//	  timer_service {
//	    ejb_name   = "*"
//	    data_store = defaults.data_store
//	  }
//	}
//
// Expressions are evaluated against a `defaults` object carrying the
// processor-wide data store and thread pool names.
package hcl_adapter
