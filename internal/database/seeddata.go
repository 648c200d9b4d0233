package database

import "time"

// seedPost describes one sample post. The slug doubles as the external
// post identifier served by the API.
type seedPost struct {
	Slug     string
	Title    string
	Author   string
	Date     time.Time
	Excerpt  string
	Content  string
	Category string
	Tags     []string
}

var seedCategories = []string{"programming", "devops", "cloud", "security"}

var seedTags = []string{
	"typescript", "programming", "web development",
	"rust", "go", "systems programming",
	"python", "performance",
	"javascript", "functional programming",
	"kubernetes", "ci/cd",
	"azure functions", "serverless", "azure", "aks",
	"multi-cloud", "architecture", "aws", "gcp",
	"security", "container security", "devsecops",
}

var seedPosts = []seedPost{
	{
		Slug:    "understanding-typescript-generics",
		Title:   "Understanding TypeScript Generics",
		Author:  "Sarah Coder",
		Date:    time.Date(2025, time.April, 10, 10, 30, 0, 0, time.UTC),
		Excerpt: "Learn how to leverage TypeScript generics to write more flexible and reusable code.",
		Content: "TypeScript generics allow you to write flexible, reusable functions and classes that work with a variety of types rather than a single one.\n\n" +
			"## Basic Generic Syntax\n\n" +
			"A generic function can work with any type:\n\n" +
			"```typescript\nfunction identity<T>(arg: T): T {\n    return arg;\n}\n```\n\n" +
			"## Constraints in Generics\n\n" +
			"Constraints ensure the type parameter adheres to a specific interface:\n\n" +
			"```typescript\ninterface Lengthwise {\n    length: number;\n}\n\nfunction loggingIdentity<T extends Lengthwise>(arg: T): T {\n    console.log(arg.length);\n    return arg;\n}\n```\n\n" +
			"In practice generics can be used to create very powerful abstractions, especially when combined with other TypeScript features.",
		Category: "programming",
		Tags:     []string{"typescript", "programming", "web development"},
	},
	{
		Slug:    "rust-vs-go-systems-programming",
		Title:   "Rust vs Go: Systems Programming in 2025",
		Author:  "Michael Rust",
		Date:    time.Date(2025, time.April, 8, 14, 15, 0, 0, time.UTC),
		Excerpt: "A detailed comparison between Rust and Go for modern systems programming.",
		Content: "In 2025, both Rust and Go continue to be popular choices for systems programming, with each language offering distinct advantages.\n\n" +
			"## Performance\n\n" +
			"Rust generally offers better raw performance due to its zero-cost abstractions and lack of garbage collection. Go, with its garbage collector, might introduce small pauses but provides simpler memory management that's often good enough.\n\n" +
			"## Development Speed\n\n" +
			"Go shines when it comes to development speed. Its fast compilation and straightforward concurrency model with goroutines make it easy to write and maintain code quickly. Rust has a steeper learning curve but rewards developers with memory safety without GC overhead.\n\n" +
			"## Use Cases\n\n" +
			"Rust excels in performance-critical and embedded systems; Go excels in networked services, cloud-native applications, and infrastructure tooling.",
		Category: "programming",
		Tags:     []string{"rust", "go", "systems programming"},
	},
	{
		Slug:    "python-performance-optimization-2025",
		Title:   "Python Performance Optimization Techniques for 2025",
		Author:  "Alex Pythonic",
		Date:    time.Date(2025, time.April, 6, 16, 20, 0, 0, time.UTC),
		Excerpt: "Modern approaches to optimizing Python applications for production workloads.",
		Content: "Python performance optimization has evolved significantly in recent years. Here are the most effective techniques for 2025.\n\n" +
			"## Leverage PyPy and Alternative Interpreters\n\n" +
			"For CPU-intensive tasks, PyPy can provide 2-10x performance improvements over CPython.\n\n" +
			"## Async/Await for I/O Bound Operations\n\n" +
			"For applications with heavy I/O, asyncio provides excellent throughput improvements.\n\n" +
			"## Profiling and Monitoring\n\n" +
			"Use tools like cProfile, py-spy, and line_profiler to identify bottlenecks before optimizing.",
		Category: "programming",
		Tags:     []string{"python", "performance", "programming"},
	},
	{
		Slug:    "functional-programming-javascript",
		Title:   "Functional Programming Principles in JavaScript",
		Author:  "Elena Functional",
		Date:    time.Date(2025, time.April, 5, 9, 45, 0, 0, time.UTC),
		Excerpt: "Discover how to apply functional programming concepts in your everyday JavaScript code.",
		Content: "Functional programming is a declarative paradigm that treats computation as the evaluation of mathematical functions and avoids changing state and mutable data.\n\n" +
			"## Pure Functions\n\n" +
			"Pure functions always return the same result given the same arguments and have no side effects.\n\n" +
			"## Immutability\n\n" +
			"Instead of modifying existing data, create new data structures:\n\n" +
			"```javascript\nconst originalArray = [1, 2, 3];\nconst newArray = [...originalArray, 4];\n```\n\n" +
			"## Function Composition\n\n" +
			"```javascript\nconst compose = (f, g) => x => f(g(x));\n```\n\n" +
			"By embracing these principles, you can write JavaScript code that's more predictable, easier to test, and less prone to bugs.",
		Category: "programming",
		Tags:     []string{"javascript", "functional programming", "web development"},
	},
	{
		Slug:    "kubernetes-security-best-practices",
		Title:   "Kubernetes Security Best Practices for 2025",
		Author:  "Kara K8s",
		Date:    time.Date(2025, time.April, 9, 11, 30, 0, 0, time.UTC),
		Excerpt: "The latest security best practices for securing your Kubernetes clusters.",
		Content: "Kubernetes security continues to evolve rapidly. Here are the key practices for securing your clusters in 2025.\n\n" +
			"## Pod Security Standards\n\n" +
			"Pod Security Standards have replaced the older Pod Security Policies. Define appropriate security contexts using the Baseline or Restricted profiles.\n\n" +
			"## Network Policy Enforcement\n\n" +
			"Follow the principle of least privilege and only allow necessary communication paths:\n\n" +
			"```yaml\napiVersion: networking.k8s.io/v1\nkind: NetworkPolicy\nmetadata:\n  name: default-deny-all\nspec:\n  podSelector: {}\n  policyTypes:\n  - Ingress\n  - Egress\n```\n\n" +
			"## Secure Supply Chain\n\n" +
			"Combine image scanning in CI/CD, signed container images, admission controllers that verify signatures, and SBOM generation.\n\n" +
			"## Secrets Management\n\n" +
			"Never store secrets in container images or raw YAML files. Use a dedicated secrets management solution.",
		Category: "security",
		Tags:     []string{"kubernetes", "security", "container security", "devsecops"},
	},
	{
		Slug:    "azure-functions-serverless-architecture",
		Title:   "Building Scalable Applications with Azure Functions",
		Author:  "DevOps Dan",
		Date:    time.Date(2025, time.April, 9, 13, 20, 0, 0, time.UTC),
		Excerpt: "Design patterns and best practices for serverless applications using Azure Functions.",
		Content: "Azure Functions provides a serverless compute service that enables you to run code on-demand without managing infrastructure.\n\n" +
			"## Function App Architecture\n\n" +
			"Each function should handle a single responsibility. Break down complex workflows into smaller, focused functions, and leverage the trigger ecosystem: HTTP triggers for API endpoints, timer triggers for scheduled tasks, queue triggers for asynchronous processing.\n\n" +
			"## Cold Start Optimization\n\n" +
			"Keep expensive initialization (database connections, clients) outside the request handler so warm invocations reuse it.\n\n" +
			"## Monitoring and Observability\n\n" +
			"Implement comprehensive logging and custom telemetry so cold starts, durations, and failures are visible per function.",
		Category: "devops",
		Tags:     []string{"azure functions", "serverless", "azure"},
	},
	{
		Slug:    "aks-production-deployment-guide",
		Title:   "AKS Production Deployment: A Complete Guide",
		Author:  "Kubernetes Kate",
		Date:    time.Date(2025, time.April, 7, 11, 45, 0, 0, time.UTC),
		Excerpt: "Step-by-step guide to deploying and managing production workloads on Azure Kubernetes Service.",
		Content: "Azure Kubernetes Service (AKS) provides a managed Kubernetes service that simplifies container orchestration.\n\n" +
			"## Cluster Setup\n\n" +
			"For production workloads, enable the cluster autoscaler, managed identity, and monitoring add-ons, and size node pools per workload type.\n\n" +
			"## Application Deployment\n\n" +
			"Set resource requests and limits, liveness and readiness probes against /health, and pull configuration from secrets:\n\n" +
			"```yaml\nlivenessProbe:\n  httpGet:\n    path: /health\n    port: 3001\n  initialDelaySeconds: 30\n  periodSeconds: 10\n```\n\n" +
			"## Security\n\n" +
			"Apply default-deny network policies and the restricted Pod Security Standard to production namespaces.",
		Category: "devops",
		Tags:     []string{"aks", "kubernetes", "azure", "ci/cd"},
	},
	{
		Slug:    "multi-cloud-architecture-patterns",
		Title:   "Multi-Cloud Architecture Patterns for Enterprise Scale",
		Author:  "Cloud Architect Chris",
		Date:    time.Date(2025, time.April, 11, 15, 30, 0, 0, time.UTC),
		Excerpt: "Design patterns and strategies for building resilient multi-cloud applications.",
		Content: "Multi-cloud strategies are becoming essential for enterprise resilience and avoiding vendor lock-in.\n\n" +
			"## Why Multi-Cloud?\n\n" +
			"Risk mitigation, cost optimization, compliance with data-residency requirements, and access to best-of-breed services from different providers.\n\n" +
			"## Architecture Patterns\n\n" +
			"Active-passive (primary workloads on one cloud, disaster recovery on another), active-active (workloads distributed across clouds), and federated (different applications on different clouds).\n\n" +
			"## Implementation\n\n" +
			"Use cloud-agnostic infrastructure as code, Kubernetes for workload abstraction, and centralized observability aggregating metrics from every provider.\n\n" +
			"Multi-cloud success requires careful planning, robust automation, and consistent governance across all environments.",
		Category: "cloud",
		Tags:     []string{"multi-cloud", "architecture", "aws", "azure", "gcp"},
	},
}
