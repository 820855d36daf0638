package timerservice

// InvokerFactory creates the invokers that deliver timeouts to a component.
// One instance exists per deployment unit.
type InvokerFactory struct {
	DeploymentName string
}

// NewInvokerFactory creates an invoker factory for the named deployment.
func NewInvokerFactory(deploymentName string) *InvokerFactory {
	return &InvokerFactory{DeploymentName: deploymentName}
}

// Invoker addresses timeout delivery for one component.
type Invoker struct {
	DeploymentName string
	Component      string
}

// CreateInvoker returns the invoker for a component.
func (f *InvokerFactory) CreateInvoker(component ComponentRef) Invoker {
	return Invoker{DeploymentName: f.DeploymentName, Component: component.Name}
}

// FactoryConfiguration is shared by every factory node built for one component.
type FactoryConfiguration struct {
	Registry       *Registry
	Listener       TimerListener
	InvokerFactory *InvokerFactory
}

// BeanConfiguration identifies a component to a distributable provider.
type BeanConfiguration struct {
	// Name is `<parent>.<deployment>.<component>`, the parent segment omitted when absent.
	Name string
	// DeploymentName is the name of the deployment unit owning the component.
	DeploymentName string
}
